// Package bnadapter defines the narrow interface the junction tree uses
// to consume a Bayesian network, plus a reference implementation of it.
//
// The interface deliberately exposes nothing about how a network was
// built, loaded, or stored: just per-variable CPTs and structure
// (parents, declared states), the undirected moral graph used for
// triangulation, and a default elimination order. Callers that already
// have their own network representation can implement BNAdapter
// directly over it instead of going through Network.
package bnadapter
