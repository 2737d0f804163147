package main

import "github.com/vivekmitra98/shareplaces-backend/internal/app"

func main() {
	app.Run()
}
