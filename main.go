package main

import "github.com/sunshineyour/AI-IDE-Chat-Export-Tool/cmd"

func main() {
	cmd.Execute()
}
