package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avatimes/avatimes/internal/api/recovery"
	"github.com/avatimes/avatimes/internal/auth"
	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/services"
	"github.com/avatimes/avatimes/internal/sim"
	"github.com/avatimes/avatimes/internal/store"
)

// Deps carries everything the router needs. Replies may be nil when the
// simulator is disabled; Healthy may be nil when no monitor runs.
type Deps struct {
	KV      blob.KV
	Store   store.Store
	Auth    *auth.Service
	Replies *sim.Replies
	Healthy func() bool
}

// NewRouter builds the HTTP router with all API routes.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	postSvc := services.NewPostService(d.Store)
	chatSvc := services.NewChatService(d.Store)
	mediaSvc := services.NewMediaService(d.Store)
	notifSvc := services.NewNotificationService(d.Store)
	profileSvc := services.NewProfileService(d.Store)
	exploreSvc := services.NewExploreService(d.Store)

	healthHandler := NewHealthHandler(d.KV, d.Healthy)
	authHandler := NewAuthHandler(d.Auth)
	postHandler := NewPostHandler(postSvc)
	chatHandler := NewChatHandler(chatSvc, d.Replies)
	mediaHandler := NewMediaHandler(mediaSvc)
	notifHandler := NewNotificationHandler(notifSvc)
	profileHandler := NewProfileHandler(profileSvc)
	settingsHandler := NewSettingsHandler(d.Store)
	exploreHandler := NewExploreHandler(exploreSvc)

	// Health and metrics
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStorageHealth).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Auth
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	router.HandleFunc("/api/auth/me", authHandler.Me).Methods("GET")
	router.HandleFunc("/api/auth/password", authHandler.ChangePassword).Methods("POST")

	// Posts and comments
	router.HandleFunc("/api/posts", postHandler.Feed).Methods("GET")
	router.HandleFunc("/api/posts", postHandler.Create).Methods("POST")
	router.HandleFunc("/api/posts/{postId}", postHandler.Get).Methods("GET")
	router.HandleFunc("/api/posts/{postId}", postHandler.Delete).Methods("DELETE")
	router.HandleFunc("/api/posts/{postId}/like", postHandler.ToggleLike).Methods("POST")
	router.HandleFunc("/api/posts/{postId}/comments", postHandler.Comments).Methods("GET")
	router.HandleFunc("/api/posts/{postId}/comments", postHandler.AddComment).Methods("POST")
	router.HandleFunc("/api/posts/{postId}/comments/{commentId}", postHandler.DeleteComment).Methods("DELETE")
	router.HandleFunc("/api/posts/{postId}/comments/{commentId}/like", postHandler.LikeComment).Methods("POST")

	// Reels and stories
	router.HandleFunc("/api/reels", mediaHandler.Reels).Methods("GET")
	router.HandleFunc("/api/reels", mediaHandler.CreateReel).Methods("POST")
	router.HandleFunc("/api/reels/{reelId}", mediaHandler.DeleteReel).Methods("DELETE")
	router.HandleFunc("/api/reels/{reelId}/like", mediaHandler.ToggleReelLike).Methods("POST")
	router.HandleFunc("/api/stories", mediaHandler.Stories).Methods("GET")
	router.HandleFunc("/api/stories", mediaHandler.CreateStory).Methods("POST")
	router.HandleFunc("/api/stories/{storyId}/view", mediaHandler.ViewStory).Methods("POST")

	// Conversations
	router.HandleFunc("/api/conversations", chatHandler.List).Methods("GET")
	router.HandleFunc("/api/conversations/group", chatHandler.CreateGroup).Methods("POST")
	router.HandleFunc("/api/conversations/direct", chatHandler.CreateDirect).Methods("POST")
	router.HandleFunc("/api/conversations/{convId}", chatHandler.Get).Methods("GET")
	router.HandleFunc("/api/conversations/{convId}/messages", chatHandler.SendMessage).Methods("POST")
	router.HandleFunc("/api/conversations/{convId}/read", chatHandler.MarkRead).Methods("POST")

	// Notifications
	router.HandleFunc("/api/notifications", notifHandler.List).Methods("GET")
	router.HandleFunc("/api/notifications/unread-count", notifHandler.UnreadCount).Methods("GET")
	router.HandleFunc("/api/notifications/read-all", notifHandler.MarkAllRead).Methods("POST")
	router.HandleFunc("/api/notifications/{notifId}/read", notifHandler.MarkRead).Methods("POST")

	// Profiles and settings
	router.HandleFunc("/api/profiles/{username}", profileHandler.Get).Methods("GET")
	router.HandleFunc("/api/profiles/{username}", profileHandler.Update).Methods("PATCH")
	router.HandleFunc("/api/settings", settingsHandler.Get).Methods("GET")
	router.HandleFunc("/api/settings", settingsHandler.Put).Methods("PUT")

	// Explore
	router.HandleFunc("/api/explore/search", exploreHandler.Search).Methods("GET")
	router.HandleFunc("/api/explore/category/{category}", exploreHandler.Browse).Methods("GET")
	router.HandleFunc("/api/explore/recent", exploreHandler.RecentSearches).Methods("GET")
	router.HandleFunc("/api/explore/recent", exploreHandler.ClearSearches).Methods("DELETE")

	return router
}
