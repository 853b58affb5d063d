package taivm

type Program struct {
	Name string
	Code []OpCode
}
