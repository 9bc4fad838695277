// Routergeo enriches router IP lists with approximate locations.
//
// Every address is looked up in a local geo database (MaxMind or
// IP2Location) and, independently, reverse-resolved through DNS. City
// codes hidden in router hostnames (tpe-gw1, khh2.core and so on)
// corroborate the database answer, and each row gets a confidence
// rating out of the combined evidence. Results land in a CSV report
// plus a run summary; the same pipeline is also exposed over a small
// HTTP API.
package main
