package main

import "github.com/sChintamani/reflectcfg/cmd"

func main() {
	cmd.Execute()
}
