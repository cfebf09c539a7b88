package main

import "tabela/cmd/server/cmd"

func main() {
	cmd.Execute()
}
