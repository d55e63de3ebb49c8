package category

import "timetrack/internal/domain/category"

type listInput struct {
	API string `path:"api"`
}

type listByUserInput struct {
	API string `path:"api"`
	ID  string `path:"id" doc:"Owner user id"`
}

type listOutput struct {
	Body []category.Category
}

type idInput struct {
	API string `path:"api"`
	ID  string `path:"id" doc:"Category id"`
}

type categoryOutput struct {
	Body category.Category
}

type createInput struct {
	API  string `path:"api"`
	ID   string `path:"id" doc:"Owner user id"`
	Body category.CreateRequest
}

type updateInput struct {
	API  string `path:"api"`
	ID   string `path:"id" doc:"Category id"`
	Body category.Patch
}
