// Package eid computes and resolves Element Identity Descriptors: stable,
// serializable values that locate a specific element in a tree-structured
// document across reorderings, restyles, and framework-generated id/class
// churn. Generate walks an element's ancestry to build a descriptor;
// Resolve walks a descriptor back down to the element(s) it describes.
package eid
