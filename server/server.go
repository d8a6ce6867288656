// Package server maps the HTTP surface onto the core engine. Routing here is
// deliberately thin glue: parameter extraction, body binding and status
// mapping. All rules live in auth, content and reaction.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/rustlingbird/chirprack/auth"
	"github.com/rustlingbird/chirprack/content"
	"github.com/rustlingbird/chirprack/reaction"
	"github.com/rustlingbird/chirprack/server/middlewares"
)

// Server bundles the handler dependencies.
type Server struct {
	gateway   *auth.Gateway
	content   *content.Store
	reactions *reaction.Ledger
}

func New(gateway *auth.Gateway, store *content.Store, ledger *reaction.Ledger) *Server {
	return &Server{gateway: gateway, content: store, reactions: ledger}
}

// Register wires all routes into the router. Everything under /posts sits
// behind the JWT middleware; route shapes (query-parameter addressing, the
// shared POST /posts entry for posts and comments) are kept compatible with
// the historic API.
func (s *Server) Register(router *gin.Engine, issuer *auth.TokenIssuer) {
	router.POST("/auth/signup", s.signup)
	router.POST("/auth/login", s.login)

	posts := router.Group("/posts", middlewares.JWT(issuer))
	{
		posts.POST("", s.createContent)
		posts.GET("", s.getPost)
		posts.GET("/all", s.getAllPosts)
		posts.GET("/me", s.getMyPosts)
		posts.PATCH("", s.updatePost)
		posts.DELETE("", s.deletePost)

		posts.POST("/like", s.likePost)
		posts.GET("/like", s.listPostLikes)
		posts.POST("/dislike", s.dislikePost)
		posts.GET("/dislike", s.listPostDislikes)

		posts.GET("/comments", s.listComments)
		posts.PATCH("/comments", s.updateComment)
		posts.DELETE("/comments", s.deleteComment)

		posts.POST("/comments/like", s.likeComment)
		posts.GET("/comments/like", s.listCommentLikes)
		posts.DELETE("/comments/like", s.removeCommentLike)
		posts.POST("/comments/dislike", s.dislikeComment)
		posts.GET("/comments/dislike", s.listCommentDislikes)
		posts.DELETE("/comments/dislike", s.removeCommentDislike)

		posts.POST("/comments/reply", s.createReply)
		posts.GET("/comments/reply", s.listRepliesByPost)
		posts.GET("/comments/reply/me", s.listMyReplies)
		posts.DELETE("/comments/reply", s.deleteReply)
	}
}
