// Package jabr implements a symbolic calculator session.
//
// The syntax of input lines is intended to be similar to math you'd write in
// your notes. "2 x y" is a multiplication of three terms, and so is "2x y".
// "-2^2^n" is the same as "-(2^(2^n))", where "a^b" or "a**b" is
// exponentiation. "n!" and "n!!" are factorials. Comparisons such as "x ≤ 3"
// build relations, which are never decided. "x := 3" assigns to x and
// evaluates to 3.
//
// A line may end with a chain of postfix operators applied left to right:
// "(x^2 - 1)/(x + 1) //simplify //N" simplifies, then evaluates numerically.
// Operators may take arguments, as in "x^3 //diff(x, 2)" or "pi //N(50)".
//
// Numbers with a decimal point or exponent are reals with the precision in
// effect when they are read. Assigning to dps or prec changes the precision
// for later numbers.
//
package jabr
