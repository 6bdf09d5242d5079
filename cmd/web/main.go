// @title           flatmates API
// @version         1.0
// @description     Flat and flatmate marketplace with a credits-based contact gate.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "flatmates_backend/internal/app"

func main() {
	app.Run()
}
