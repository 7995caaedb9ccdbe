package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"group_service/internal/api/handlers/groups"
	"group_service/internal/api/handlers/photos"
	mw "group_service/internal/api/middlewares"
	"group_service/internal/api/routers"
	"group_service/internal/identity"
	"group_service/internal/repositories/sqlstore"
	"group_service/internal/storage"
	"group_service/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	utils.InitLogger()

	db, err := sqlstore.ConnectDb()
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	store := sqlstore.NewStore(db)
	resolver := identity.NewSQLResolver(store)

	var photoStore storage.PhotoStore
	if os.Getenv("MINIO_ENDPOINT") != "" {
		client, err := storage.NewMinIOClient()
		if err != nil {
			utils.Logger.Fatal("object store connection failed: ", err)
		}
		photoStore = client
	} else {
		utils.Logger.Warn("MINIO_ENDPOINT not set, photo uploads disabled")
	}

	gh := groups.NewHandler(store, resolver, photoStore)
	ph := photos.NewHandler(photoStore)

	router := routers.MainRouter(gh, ph)
	secureMux := mw.ResponseTimeMiddleware(mw.SecurityHeaders(router))

	port := os.Getenv("SERVER_PORT")

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
	}

	fmt.Println("Server is running on port", port)

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")
	if cert != "" && key != "" {
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}
}
