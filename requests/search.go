package requests

type Search struct {
	Q    string `form:"q"`
	Qty  int    `form:"qty,default=1"`
	Sort string `form:"sort,default=price"`
}
