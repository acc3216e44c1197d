// lehctl es un CLI operativo sobre la API HTTP del registro LEH:
// ping de salud y exportación de datos a JSON.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

// export baja una colección completa y la escribe identada en un archivo,
// igual que el script de exportación original.
func (c *client) export(path, out string) error {
	status, body, err := c.do("GET", path, nil)
	if err != nil {
		return err
	}
	if status/100 != 2 {
		return fmt.Errorf("export falló: status=%d body=%s", status, string(body))
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("export: respuesta no es JSON: %w", err)
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, pretty, 0o644); err != nil {
		return fmt.Errorf("export: escribir %s: %w", out, err)
	}
	fmt.Printf("exportado a %s\n", out)
	return nil
}

func main() {
	var (
		baseURL = envOr("LEH_API_URL", "http://localhost:5000")
		format  = envOr("LEH_FORMAT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "lehctl",
		Short: "CLI operativo del registro LEH (vía API HTTP)",
	}

	root.PersistentFlags().StringVar(&baseURL, "api-url", baseURL, "URL base de la API (env LEH_API_URL)")
	root.PersistentFlags().StringVar(&format, "format", format, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, OutFormat: format, HTTP: &http.Client{Timeout: timeout}}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Verifica que el servicio y su store respondan",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/readyz", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping falló: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, []byte(`{"ok":true}`))
			return nil
		},
	}

	exportCmd := &cobra.Command{Use: "export", Short: "Exporta colecciones a JSON"}

	var usersOut string
	exportUsersCmd := &cobra.Command{
		Use:   "users",
		Short: "Exporta todos los usuarios a un archivo JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.export("/users", usersOut)
		},
	}
	exportUsersCmd.Flags().StringVar(&usersOut, "out", "users.json", "Archivo de salida")

	var recordsOut string
	exportRecordsCmd := &cobra.Command{
		Use:   "leh-data",
		Short: "Exporta todos los registros LEH a un archivo JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cl.export("/leh-data", recordsOut)
		},
	}
	exportRecordsCmd.Flags().StringVar(&recordsOut, "out", "leh-data.json", "Archivo de salida")

	exportCmd.AddCommand(exportUsersCmd)
	exportCmd.AddCommand(exportRecordsCmd)

	root.AddCommand(pingCmd)
	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
