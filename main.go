package main

import "github.com/Xaia/clean-ass-from-specular/cmd/assclean"

func main() { assclean.Execute() }
