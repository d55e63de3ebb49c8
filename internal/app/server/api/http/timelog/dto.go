package timelog

import "timetrack/internal/domain/timelog"

type listInput struct {
	API string `path:"api"`
}

type listByUserInput struct {
	API string `path:"api"`
	ID  string `path:"id" doc:"Owner user id"`
}

type listOutput struct {
	Body []timelog.Entry
}

type idInput struct {
	API string `path:"api"`
	ID  string `path:"id" doc:"Time entry id"`
}

type entryOutput struct {
	Body timelog.Entry
}

type createInput struct {
	API  string `path:"api"`
	ID   string `path:"id" doc:"Owner user id"`
	Body timelog.CreateRequest
}

type updateInput struct {
	API  string `path:"api"`
	ID   string `path:"id" doc:"Time entry id"`
	Body timelog.Patch
}
