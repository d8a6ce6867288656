package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rustlingbird/chirprack/apperror"
	"github.com/rustlingbird/chirprack/model"
	. "github.com/rustlingbird/chirprack/utils/log"
)

// authedUser returns the user id resolved by the JWT middleware.
func authedUser(c *gin.Context) string {
	return c.Request.Header.Get("sub")
}

// writeError renders an error with its taxonomy kind and status. Internal
// causes are logged server side and never rendered.
func writeError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.Internal {
		Log.Error("internal error: ", err)
	}
	c.JSON(apperror.HTTPStatus(err), gin.H{
		"error":   kind,
		"message": apperror.Message(err),
	})
}

// requiredQuery extracts a query parameter, rendering a validation failure
// when it is absent.
func requiredQuery(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if value == "" {
		writeError(c, apperror.New(apperror.Validation, "missing required query parameter "+name))
		return "", false
	}
	return value, true
}

func (s *Server) signup(c *gin.Context) {
	var in model.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, apperror.Wrap(err, apperror.Validation, "malformed signup payload"))
		return
	}
	env, err := s.gateway.Signup(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, env)
}

func (s *Server) login(c *gin.Context) {
	var in model.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, apperror.Wrap(err, apperror.Validation, "malformed login payload"))
		return
	}
	env, err := s.gateway.Login(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

// createContent serves POST /posts. Without a postId query parameter it
// creates a post; with one it creates a comment under that post, the route
// shape the historic API exposes.
func (s *Server) createContent(c *gin.Context) {
	if postID := c.Query("postId"); postID != "" {
		var in model.CommentInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeError(c, apperror.Wrap(err, apperror.Validation, "malformed comment payload"))
			return
		}
		comment, err := s.content.CreateComment(postID, authedUser(c), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
		return
	}

	var in model.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, apperror.Wrap(err, apperror.Validation, "malformed post payload"))
		return
	}
	post, err := s.content.CreatePost(authedUser(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (s *Server) getPost(c *gin.Context) {
	id, ok := requiredQuery(c, "id")
	if !ok {
		return
	}
	post, err := s.content.GetPost(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) getAllPosts(c *gin.Context) {
	posts, err := s.content.GetAllPosts()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) getMyPosts(c *gin.Context) {
	posts, err := s.content.GetPostsByAuthor(authedUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) updatePost(c *gin.Context) {
	id, ok := requiredQuery(c, "postId")
	if !ok {
		return
	}
	var in model.UpdatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, apperror.Wrap(err, apperror.Validation, "malformed post update payload"))
		return
	}
	post, err := s.content.UpdatePost(id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) deletePost(c *gin.Context) {
	id, ok := requiredQuery(c, "postid")
	if !ok {
		return
	}
	if err := s.content.DeletePost(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted successfully"})
}

func (s *Server) likePost(c *gin.Context) {
	id, ok := requiredQuery(c, "id")
	if !ok {
		return
	}
	like, err := s.reactions.LikePost(authedUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

func (s *Server) dislikePost(c *gin.Context) {
	id, ok := requiredQuery(c, "id")
	if !ok {
		return
	}
	dislike, err := s.reactions.DislikePost(authedUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dislike)
}

func (s *Server) listPostLikes(c *gin.Context) {
	id, ok := requiredQuery(c, "id")
	if !ok {
		return
	}
	page, err := s.reactions.ListPostLikes(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) listPostDislikes(c *gin.Context) {
	id, ok := requiredQuery(c, "id")
	if !ok {
		return
	}
	page, err := s.reactions.ListPostDislikes(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) listComments(c *gin.Context) {
	postID, ok := requiredQuery(c, "postId")
	if !ok {
		return
	}
	page, err := s.content.ListComments(postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) updateComment(c *gin.Context) {
	id, ok := requiredQuery(c, "commentId")
	if !ok {
		return
	}
	var in model.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, apperror.Wrap(err, apperror.Validation, "malformed comment payload"))
		return
	}
	comment, err := s.content.UpdateComment(id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *Server) deleteComment(c *gin.Context) {
	id, ok := requiredQuery(c, "commentId")
	if !ok {
		return
	}
	if err := s.content.DeleteComment(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}

func (s *Server) likeComment(c *gin.Context) {
	id, ok := requiredQuery(c, "commentId")
	if !ok {
		return
	}
	like, err := s.reactions.LikeComment(authedUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

func (s *Server) dislikeComment(c *gin.Context) {
	id, ok := requiredQuery(c, "commentId")
	if !ok {
		return
	}
	dislike, err := s.reactions.DislikeComment(authedUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dislike)
}

func (s *Server) listCommentLikes(c *gin.Context) {
	id, ok := requiredQuery(c, "commentId")
	if !ok {
		return
	}
	page, err := s.reactions.ListCommentLikes(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) listCommentDislikes(c *gin.Context) {
	id, ok := requiredQuery(c, "commentId")
	if !ok {
		return
	}
	page, err := s.reactions.ListCommentDislikes(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) removeCommentLike(c *gin.Context) {
	id, ok := requiredQuery(c, "commentLikeId")
	if !ok {
		return
	}
	if err := s.reactions.RemoveCommentReaction(id, model.VoteLike); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment like removed"})
}

func (s *Server) removeCommentDislike(c *gin.Context) {
	id, ok := requiredQuery(c, "commentDislikeId")
	if !ok {
		return
	}
	if err := s.reactions.RemoveCommentReaction(id, model.VoteDislike); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment dislike removed"})
}

func (s *Server) createReply(c *gin.Context) {
	commentID, ok := requiredQuery(c, "commentId")
	if !ok {
		return
	}
	postID, ok := requiredQuery(c, "postId")
	if !ok {
		return
	}
	var in model.ReplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, apperror.Wrap(err, apperror.Validation, "malformed reply payload"))
		return
	}
	reply, err := s.content.CreateReply(commentID, postID, authedUser(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (s *Server) listRepliesByPost(c *gin.Context) {
	postID, ok := requiredQuery(c, "postId")
	if !ok {
		return
	}
	page, err := s.content.ListRepliesByPost(postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) listMyReplies(c *gin.Context) {
	page, err := s.content.ListRepliesByUser(authedUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) deleteReply(c *gin.Context) {
	id, ok := requiredQuery(c, "commentReplyId")
	if !ok {
		return
	}
	if err := s.content.DeleteReply(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment reply deleted successfully"})
}
