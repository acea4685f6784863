package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/yatube/backend/internal/cache"
	"github.com/anonto42/yatube/backend/internal/feed"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/pagination"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FeedHandler serves the paginated post listings
type FeedHandler struct {
	feeds    *feed.Service
	cache    *cache.PageCache
	cacheTTL time.Duration
	log      *zap.Logger
}

// NewFeedHandler creates a new FeedHandler. The global feed is cached in
// pageCache for cacheTTL.
func NewFeedHandler(feeds *feed.Service, pageCache *cache.PageCache, cacheTTL time.Duration, log *zap.Logger) *FeedHandler {
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultTTL
	}
	return &FeedHandler{
		feeds:    feeds,
		cache:    pageCache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetGlobalFeed)
	g.GET("/groups/:slug/posts", h.GetGroupFeed)
	g.GET("/profile/:username/posts", h.GetProfileFeed)
	g.GET("/follow", h.GetFollowingFeed, middleware.RequireViewer)
}

// GetGlobalFeed returns every post, newest first. The rendered response is
// shared by all viewers and may lag behind new posts by the cache TTL.
func (h *FeedHandler) GetGlobalFeed(c echo.Context) error {
	req := c.Request()
	number := pagination.ParsePage(c.QueryParam("page"))
	// Only the page number varies the response, so nothing else goes in the key.
	key := cache.KeyPrefix + req.URL.Path + "?page=" + strconv.Itoa(number)

	body, err := h.cache.GetOrCompute(key, h.cacheTTL, func() ([]byte, error) {
		page, err := h.feeds.GlobalFeed(req.Context(), number)
		if err != nil {
			return nil, err
		}
		views, err := h.feeds.Views(req.Context(), page.Posts)
		if err != nil {
			return nil, err
		}
		return json.Marshal(echo.Map{
			"success": true,
			"data":    echo.Map{"posts": views},
			"meta":    pageMeta(page, h.feeds.PageSize()),
		})
	})
	if err != nil {
		return err
	}

	return c.JSONBlob(http.StatusOK, body)
}

// GetGroupFeed returns the posts of one group
func (h *FeedHandler) GetGroupFeed(c echo.Context) error {
	ctx := c.Request().Context()
	page, group, err := h.feeds.GroupFeed(ctx, c.Param("slug"), pagination.ParsePage(c.QueryParam("page")))
	if err != nil {
		return err
	}
	views, err := h.feeds.Views(ctx, page.Posts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"group": group,
			"posts": views,
		},
		"meta": pageMeta(page, h.feeds.PageSize()),
	})
}

// GetProfileFeed returns an author's posts and whether the viewer follows them
func (h *FeedHandler) GetProfileFeed(c echo.Context) error {
	ctx := c.Request().Context()
	profile, err := h.feeds.ProfileFeed(ctx, c.Param("username"), pagination.ParsePage(c.QueryParam("page")), getUserIDFromContext(c))
	if err != nil {
		return err
	}
	views, err := h.feeds.Views(ctx, profile.Posts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"author":          profile.Author.ToCompact(),
			"following":       profile.Following,
			"followers_count": profile.FollowersCount,
			"following_count": profile.FollowingCount,
			"posts":           views,
		},
		"meta": pageMeta(profile.Page, h.feeds.PageSize()),
	})
}

// GetFollowingFeed returns posts by the authors the viewer follows
func (h *FeedHandler) GetFollowingFeed(c echo.Context) error {
	ctx := c.Request().Context()
	page, err := h.feeds.FollowingFeed(ctx, getUserIDFromContext(c), pagination.ParsePage(c.QueryParam("page")))
	if err != nil {
		return err
	}
	views, err := h.feeds.Views(ctx, page.Posts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": views},
		"meta":    pageMeta(page, h.feeds.PageSize()),
	})
}

