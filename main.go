package main

import "github.com/phamm25/ai-chatbot/cmd"

func main() {
	cmd.Execute()
}
