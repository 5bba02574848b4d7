package main

import (
	cmd "github.com/recrep/recrep/cmd/recrep"
	"github.com/recrep/recrep/data"
	"github.com/recrep/recrep/internal/assets"
)

func main() {
	assets.UpdateData(&data.Templates)
	cmd.Execute()
}
