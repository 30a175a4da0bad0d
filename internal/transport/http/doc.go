// Package http contains the HTTP handlers grouped by API category.
// Every group owns a Routes() router mounted by the application shell
// under /api/v1. Business handlers are scaffold stubs: they log the
// call and answer with a placeholder until the corresponding feature
// lands; the health group is the only one backed by real system state.
package http
