package controllers

import "github.com/gin-gonic/gin"

// Controller attaches a group of routes to the engine.
type Controller interface {
	Register(r *gin.Engine)
}
