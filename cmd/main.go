// cmd/main.go
package main

import (
	"answerly/app"
)

// @title           Answerly API
// @version         1.0
// @description     Questionnaire creation and response collection API.

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
