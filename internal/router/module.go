package router

import "github.com/gin-gonic/gin"

// Module owns the routes of one resource. Name shows up in the startup log.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
