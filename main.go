package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"xobot/database"
	"xobot/game"
	"xobot/handlers"
	"xobot/middlewares"
	"xobot/shop"
	"xobot/utils"
	"xobot/ws"
)

func main() {
	logger, err := utils.InitLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("failed to load config.json", zap.Error(err))
	}

	// PostgreSQL and Redis come up concurrently.
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("failed to initialize PostgreSQL", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	<-done
	<-done

	secret := []byte(config.JWTSecret)
	profiles := database.NewProfiles(db, logger)
	leaderboard := database.NewLeaderboard(rdb, logger)
	hub := ws.NewHub(logger)
	itemShop := shop.New(db, logger)

	engine := game.NewEngine(
		game.NewRegistry(),
		profiles,
		hub,
		leaderboard,
		logger,
		time.Duration(config.MoveTimeoutSeconds)*time.Second,
		config.DefaultStake,
	)

	go utils.CronCleaner(engine, logger)

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/auth/token", func(c *gin.Context) {
		handlers.IssueToken(c, profiles, secret, logger)
	})
	router.GET("/ws/match/:id", hub.Handle)
	router.GET("/top", func(c *gin.Context) {
		handlers.GetTop(c, leaderboard, logger)
	})

	authed := router.Group("/", middlewares.AuthMiddleware(secret, logger))
	{
		authed.POST("/match", func(c *gin.Context) {
			handlers.CreateMatch(c, engine, logger)
		})
		authed.GET("/match/:id", func(c *gin.Context) {
			handlers.GetMatch(c, engine, logger)
		})
		authed.POST("/match/:id/join", func(c *gin.Context) {
			handlers.JoinMatch(c, engine, logger)
		})
		authed.POST("/match/:id/move", func(c *gin.Context) {
			handlers.MoveMatch(c, engine, logger)
		})
		authed.GET("/profile", func(c *gin.Context) {
			handlers.GetProfile(c, db, logger)
		})
		authed.GET("/shop/:category", func(c *gin.Context) {
			handlers.ListShopCategory(c, itemShop, logger)
		})
		authed.POST("/shop/buy", func(c *gin.Context) {
			handlers.BuyItem(c, itemShop, logger)
		})
		authed.POST("/shop/equip", func(c *gin.Context) {
			handlers.EquipItem(c, itemShop, logger)
		})
		authed.POST("/shop/unequip", func(c *gin.Context) {
			handlers.UnequipItem(c, itemShop, logger)
		})

		admin := authed.Group("/admin", middlewares.AdminOnly(config.AdminID))
		admin.POST("/users/:id/coins", func(c *gin.Context) {
			handlers.AdjustCoins(c, db, logger)
		})
	}

	addr := config.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
