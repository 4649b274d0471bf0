package main

import (
	"os"

	_ "time/tzdata"

	"github.com/gin-gonic/gin"
)

func init() {
	// never expose debug routes because of a missing env var
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           kuponbot admin API
// @version         1.0
// @description     Operator endpoints for the AYSI OPTICS voucher bot.

// @BasePath  /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
