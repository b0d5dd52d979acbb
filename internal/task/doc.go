// Package task implements background task processing for the API server.
// Tasks are persisted to the database before execution so that unfinished
// work survives a restart, and a fixed pool of workers drains an in-memory
// queue. The package currently runs periodic overdue-loan scans that assess
// fines on loans past their due date.
package task
