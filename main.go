package main

import "github.com/mudithakuruppu/employeemanagement-ui/cmd"

func main() {
	cmd.Execute()
}
