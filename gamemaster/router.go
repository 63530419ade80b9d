package gamemaster

import (
	"errors"
	"net/http"

	"territory/game"

	"github.com/gin-gonic/gin"
)

// NewRouter exposes the session to a render layer:
//
//	GET  /state    current view
//	POST /command  apply a Command, answer with the new view
//	GET  /ws       live views over a websocket
func NewRouter(session *Session, hub *Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws", hub.HandleWS)
	r.GET("/state", StateHandler(session))
	r.POST("/command", CommandHandler(session, hub))

	return r
}

func StateHandler(session *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"state": session.View(), "scores": scoresByName(session)})
	}
}

// CommandHandler applies one command. Malformed or unknown commands and
// piece kinds are a 400, rule rejections a 409; both carry the unchanged
// state.
func CommandHandler(session *Session, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cmd Command
		if err := c.ShouldBindJSON(&cmd); err != nil || cmd.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "command name required"})
			return
		}

		view, err := session.Do(cmd)
		if err != nil {
			status := http.StatusConflict
			if errors.Is(err, ErrUnknownCommand) || errors.Is(err, game.ErrInvalidKind) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error(), "state": view})
			return
		}

		hub.Broadcast(view)
		c.JSON(http.StatusOK, gin.H{"state": view})
	}
}

func scoresByName(session *Session) map[string]int {
	scores := map[string]int{}
	for color, n := range session.Scores() {
		scores[color.String()] = n
	}
	return scores
}
