package di_test

import "github.com/sghaida/typereg/di"

type Database struct {
	name    string
	Queries int
}

func (d Database) Name() string { return d.name }

type Logger struct{ Level string }

type Cache struct{ Entries map[string]string }

type WebServer struct {
	DB *di.Handle[Database]
}

type Gateway struct {
	DB     *di.Handle[Database]
	Cache  *di.Handle[Cache]
	Logger *di.Handle[Logger]
	Web    *di.Handle[WebServer]
}

func newMySQL() *di.Descriptor[Database] {
	return di.Provide0("MySQL", func() Database { return Database{name: "MySQL"} })
}

func newWebServer() *di.Descriptor[WebServer] {
	return di.Provide1("WebServer", func(db *di.Handle[Database]) WebServer {
		return WebServer{DB: db}
	})
}

func newLogger() *di.Descriptor[Logger] {
	return di.Provide0("Logger", func() Logger { return Logger{Level: "info"} })
}

func newCache() *di.Descriptor[Cache] {
	return di.Provide0("Cache", func() Cache { return Cache{Entries: map[string]string{}} })
}
