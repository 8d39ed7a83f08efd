package main

import "github.com/jejakkarbon/plantid/internal/app"

func main() {
	app.Execute()
}
