// Package repository exposes note CRUD to presenters as asynchronous tasks.
package repository
