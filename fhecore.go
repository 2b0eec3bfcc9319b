/*
Package fhecore is a framework of operation contracts for fully homomorphic encryption over the
discretized torus, together with a reference backend and a statistical test harness.

The core packages define the entities (LWE, GLWE and GGSW ciphertexts, keys, plaintexts and
cleartexts), the checked and unchecked contracts of the engines operating on them, and the noise
propagation formulas of each operation. The fixture package checks any backend implementing these
contracts against the formulas by comparing the empirical distribution of the output noise with
the predicted one.
*/
package fhecore
