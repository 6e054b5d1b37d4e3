package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	lockstitchVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())
	b.Test().Does(Go().TestAll())

	app := NewAppBuild("lockstitch", "cmd/lockstitch", lockstitchVersion)
	app.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", lockstitchVersion).
			CgoEnabled(false)
	})
	app.Variant("windows", "amd64")
	app.Variant("linux", "amd64")
	app.Variant("linux", "arm64")
	app.Variant("darwin", "amd64")
	app.Variant("darwin", "arm64")
	b.ImportApp(app)

	b.Execute()
}
