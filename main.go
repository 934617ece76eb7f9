package main

import (
	"os"

	_ "git.handmade.network/hmn/mashinka/src/deploy"
	_ "git.handmade.network/hmn/mashinka/src/hmns3"
	_ "git.handmade.network/hmn/mashinka/src/index"
	"git.handmade.network/hmn/mashinka/src/mashinka"
	_ "git.handmade.network/hmn/mashinka/src/publish"
)

func main() {
	os.Exit(mashinka.Execute())
}
