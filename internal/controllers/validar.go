package controllers

import (
	"fmt"
	"strings"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

func requerido(valor, campo string) error {
	if strings.TrimSpace(valor) == "" {
		return fmt.Errorf("%w: %s", rules.ErrCampoRequerido, campo)
	}

	return nil
}

func validarUsuario(usuario models.Usuario) error {
	if err := requerido(usuario.Nombre, "nombre"); err != nil {
		return err
	}

	return requerido(usuario.Email, "email")
}

func validarCliente(cliente models.Cliente) error {
	if err := requerido(cliente.Nombre, "nombre"); err != nil {
		return err
	}

	return requerido(cliente.RUT, "rut")
}

func validarCodigo(codigo models.CodigoServicio) error {
	if err := requerido(codigo.Codigo, "codigo"); err != nil {
		return err
	}

	return requerido(codigo.Descripcion, "descripcion")
}
