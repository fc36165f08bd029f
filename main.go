package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	qwen "github.com/skateapp/roster-sync/repos/qwen"
	resend "github.com/skateapp/roster-sync/repos/resend"
	rosterRepo "github.com/skateapp/roster-sync/repos/roster"

	notify "github.com/skateapp/roster-sync/services/notify"
	roster "github.com/skateapp/roster-sync/services/roster"
	suggest "github.com/skateapp/roster-sync/services/suggest"
)

func main() {
	ctx := context.Background()

	projectID := os.Getenv("GCP_PROJECT_ID")
	credentialsJSON := os.Getenv("GCP_CREDENTIALS_JSON")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	fromEmail := os.Getenv("FROM_EMAIL")
	adminSecret := os.Getenv("ADMIN_SECRET")
	hostURL := os.Getenv("HOST_URL")

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	store := rosterRepo.NewFirestoreStore(firestoreClient)
	resendService := resend.NewService(fromEmail)

	var completer qwen.Completer = qwen.Disabled{}
	if os.Getenv("DASHSCOPE_API_KEY") != "" {
		completer = qwen.NewService()
	} else {
		log.Printf("DASHSCOPE_API_KEY not set, suggestion endpoints serve fallbacks only")
	}

	rosterService := roster.NewRosterService(store)
	notifyService := notify.NewNotifyService(resendService, fromEmail, hostURL, adminSecret)
	suggestService := suggest.NewSuggestService(completer, os.Getenv("QWEN_MODEL"), os.Getenv("QWEN_EMAIL_MODEL"))

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowOrigins, ",")
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", roster.VersionHeader}

	router := gin.Default()
	router.Use(cors.New(config))

	notifyRouter := router.Group("/notify")
	suggestRouter := router.Group("/suggest")

	roster.NewHTTPHandler(roster.HTTPOptions{
		Service: rosterService,
		Router:  router,
	})

	notify.NewHTTPHandler(notify.HTTPOptions{
		Service: notifyService,
		Router:  notifyRouter,
	})

	suggest.NewHTTPHandler(suggest.HTTPOptions{
		Service: suggestService,
		Router:  suggestRouter,
	})

	log.Fatal(router.Run(":" + port))
}
