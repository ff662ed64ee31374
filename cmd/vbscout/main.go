package main

import (
	"vbscout-backend/cmd/vbscout/cmd"
)

func main() {
	cmd.Execute()
}
