package main

import (
	"github.com/wsentinels/sentinelchat/internal/cli"
)

func main() {
	cli.Execute()
}
