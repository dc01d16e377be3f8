// Package validator provides the validation building blocks used by the
// service.
//
// Two flavours live here. Rules is a small generic engine: callers declare
// ordered rule chains per field once, then run Validate for every candidate
// and get back every violation in declaration order. V10Validator wraps
// go-playground/validator v10 for tag-driven struct checks and for reusing
// its well-tested format checks (such as email) inside rule predicates.
package validator
