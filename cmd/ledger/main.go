package main

import "github.com/talx-hub/points-ledger/internal/service"

func main() {
	service.RunServer()
}
