package main

import "github.com/GriffinCanCode/PackStudio/cmd/packctl/cmd"

func main() {
	cmd.Execute()
}
