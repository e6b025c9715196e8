package main

import "trailbook_backend/internal/app"

func main() {
	app.Run()
}
