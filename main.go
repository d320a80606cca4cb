package main

import (
	"os"
	"time"

	"ecg-quiz-service/internal/db"
	"ecg-quiz-service/internal/event"
	"ecg-quiz-service/internal/handlers"
	"ecg-quiz-service/internal/repository"
	"ecg-quiz-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load env
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		logger.Fatal("MONGO_URI is required")
	}
	if err := db.InitMongo(mongoURI); err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer db.Disconnect()

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "ecg_quiz_service"
	}

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange, logger)
		if err != nil {
			logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()
	} else {
		logger.Info("RabbitMQ not configured, events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID", "X-User-Name", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(dbName)

	// Quiz pool: samples and diagnostic labels
	sampleRepo := repository.NewSampleRepository(database)
	labelRepo := repository.NewLabelRepository(database)
	sampleService := service.NewSampleService(sampleRepo, labelRepo)
	sampleHandler := handlers.NewSampleHandler(sampleService)
	labelHandler := handlers.NewLabelHandler(sampleService)

	// Quizzes and generation
	quizRepo := repository.NewQuizRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	quizService := service.NewQuizService(quizRepo, sampleRepo, labelRepo, attemptRepo, logger)
	quizHandler := handlers.NewQuizHandler(quizService)

	// Attempts and grading
	attemptService := service.NewAttemptService(attemptRepo, quizRepo, logger)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	// Statistics
	statsService := service.NewStatsService(attemptRepo, sampleRepo, labelRepo)
	statsHandler := handlers.NewStatsHandler(statsService)

	api := r.Group("/api")
	api.Use(handlers.RequireUser())
	{
		// Quiz pool management
		api.GET("/ecg-samples", sampleHandler.ListSamples)
		api.POST("/ecg-samples", sampleHandler.CreateSample)
		api.POST("/ecg-samples/:id/labels", sampleHandler.AddSampleLabel)
		api.GET("/ecg-labels", labelHandler.ListLabels)
		api.POST("/ecg-labels", labelHandler.CreateLabel)

		// Quiz generation and review
		api.POST("/quizzes/generate", func(c *gin.Context) {
			quizHandler.GenerateQuiz(c)
			if publisher != nil {
				publisher.Publish("ecg.quiz.generated", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"status":    c.Writer.Status(),
					"timestamp": time.Now(),
				})
			}
		})
		api.POST("/quizzes/generate-random", func(c *gin.Context) {
			quizHandler.GenerateRandomQuiz(c)
			if publisher != nil {
				publisher.Publish("ecg.quiz.generated", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"status":    c.Writer.Status(),
					"timestamp": time.Now(),
				})
			}
		})
		api.GET("/quizzes", quizHandler.ListQuizzes)
		api.GET("/quizzes/:id", quizHandler.GetQuiz)

		// Grading and history
		api.POST("/quiz-attempts", func(c *gin.Context) {
			attemptHandler.SubmitAttempt(c)
			if publisher != nil {
				publisher.Publish("ecg.attempt.graded", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"status":    c.Writer.Status(),
					"timestamp": time.Now(),
				})
			}
		})
		api.GET("/quiz-attempts", attemptHandler.ListAttempts)
		api.POST("/check-answer", attemptHandler.CheckAnswer)

		// Statistics
		api.GET("/statistics/:userId", func(c *gin.Context) {
			statsHandler.GetUserStatistics(c)
			if publisher != nil {
				publisher.Publish("ecg.statistics.viewed", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"target_id": c.Param("userId"),
					"timestamp": time.Now(),
				})
			}
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting ecg-quiz-service", zap.String("port", port))
	r.Run(":" + port)
}
