package main

import "github.com/frahmantamala/hopecare/cmd"

func main() {
	cmd.Execute()
}
