package main

import (
	"go-jobs-api/app"
)

// @title           Go-Jobs API
// @version         1.0
// @description     Authentication and job-category API with a dual-token session scheme.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
