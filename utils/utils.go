package utils

var (
	G_debug bool
	G_exit  []func() = []func(){}
)

// OnExit adds a cleanup function, they run in reverse order on exit.
func OnExit(f func()) {
	G_exit = append(G_exit, f)
}
