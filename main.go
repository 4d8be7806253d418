package main

import "github.com/killallgit/subarr/cmd"

// @title           Subarr API
// @version         1.0.0
// @description     Media subscription manager: subscribe to TV, movie and anime titles, import their episodes and release their torrents on removal
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/subarr
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8989
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
