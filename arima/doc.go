// Package arima fits seasonal and non-seasonal ARIMA models by conditional sum of squares and
// produces point forecasts on the original scale of the series.
//
// The seasonal model SARIMA(p,d,q)(P,D,Q)m is expressed as
//
//	phi(B) Phi(B^m) (1-B)^d (1-B^m)^D y_t = theta(B) Theta(B^m) e_t
//
// The multiplicative polynomials are expanded into plain lag coefficients so a single recursion
// serves both the seasonal and the non-seasonal case.
package arima
