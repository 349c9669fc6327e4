package main

import "github.com/tayloree/coupon-report/cmd"

func main() {
	cmd.Execute()
}
