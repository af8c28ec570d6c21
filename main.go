package main

import "review-pool.com/review-pool/cmd"

func main() {
	cmd.Execute()
}
