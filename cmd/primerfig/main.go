// cmd/primerfig/main.go
package main

import (
	"primerfig/internal/app"
	"primerfig/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
