package main

//go:generate swag init -g cmd/scorerd/main.go -o docs

// @title           Housing Deal Scorer API
// @version         0.1.0
// @description     Listing ingest, zone scoring, deal events and push devices.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
