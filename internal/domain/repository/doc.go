// Package repository define las entidades del dominio (usuarios y registros
// LEH) y la taxonomía de errores sentinela que comparten los adapters de
// persistencia y los services.
package repository
