// Package binder decodes request data into structs: JSON and form bodies,
// query strings, and path parameters.
//
// Binders run in order against one target. When the target implements
// Validator it is validated afterwards:
//
//	type CreateUser struct {
//		OrgID int    `path:"org"`
//		Name  string `json:"name"`
//		Email string `json:"email"`
//	}
//
//	func (c *CreateUser) Validate() error {
//		if c.Email == "" {
//			return errors.New("email is required")
//		}
//		return nil
//	}
//
//	r.Mount("/orgs", router.Post("/{org}/users",
//		binder.Handler(createUser, binder.Path(), binder.JSON(0)),
//		router.WithFormat("json"),
//	))
//
// Handler turns binding errors into outcomes: a body in a format the binder
// does not decode forwards with 415 Unsupported Media Type, oversized bodies
// fail with 413, validation errors with 422, and malformed input with 400.
//
// Strings are sanitized while binding: NUL bytes, line breaks, and other
// control characters are removed. Uploaded file names are reduced to their
// base name.
package binder
