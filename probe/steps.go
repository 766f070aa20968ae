package probe

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// WaterMolecule is the structure saved when the fixture names none.
func WaterMolecule() ([]Node, []Bond) {
	return []Node{
			{ID: 1, Name: "O", X: 100, Y: 100},
			{ID: 2, Name: "H", X: 150, Y: 80},
			{ID: 3, Name: "H", X: 150, Y: 120},
		}, []Bond{
			{From: 1, To: 2, Type: "single"},
			{From: 1, To: 3, Type: "single"},
		}
}

// Plan returns the five probes in the order they must run: register, login,
// get-profile, save-structure, get-structures.
func Plan(f Fixture) []Step {
	nodes, bonds := f.Nodes, f.Bonds
	if nodes == nil && bonds == nil {
		nodes, bonds = WaterMolecule()
	}
	if nodes == nil {
		nodes = []Node{}
	}
	if bonds == nil {
		bonds = []Bond{}
	}
	user := "/api/user/" + url.PathEscape(f.Email)

	return []Step{
		{
			Name:    "register",
			Marker:  "1️⃣",
			Title:   "Testing Registration API...",
			Method:  http.MethodPost,
			Path:    "/api/register",
			Payload: RegisterPayload{FullName: f.FullName, Email: f.Email, Password: f.Password},
			Render:  renderRegister,
		},
		{
			Name:    "login",
			Marker:  "2️⃣",
			Title:   "Testing Login API...",
			Method:  http.MethodPost,
			Path:    "/api/login",
			Payload: LoginPayload{Email: f.Email, Password: f.Password},
			Render:  renderLogin,
		},
		{
			Name:   "get-profile",
			Marker: "3️⃣",
			Title:  "Testing User Profile API...",
			Method: http.MethodGet,
			Path:   user,
			Render: renderProfile,
		},
		{
			Name:    "save-structure",
			Marker:  "4️⃣",
			Title:   "Testing Save Structure API...",
			Method:  http.MethodPost,
			Path:    user + "/save-structure",
			Payload: StructurePayload{Name: f.StructureName, Nodes: nodes, Bonds: bonds},
			Render:  renderSavedStructure,
		},
		{
			Name:   "get-structures",
			Marker: "5️⃣",
			Title:  "Testing Get Structures API...",
			Method: http.MethodGet,
			Path:   user + "/structures",
			Render: renderStructures,
		},
	}
}

func renderRegister(w io.Writer, body any) error {
	_, err := fmt.Fprintf(w, "   Response: %s\n", Display(body))
	return err
}

func renderLogin(w io.Writer, body any) error {
	email, err := Field(body, "user", "email")
	if err != nil {
		return err
	}
	name, err := Field(body, "user", "fullName")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "   User: %s - %s\n", Display(email), Display(name))
	return err
}

func renderProfile(w io.Writer, body any) error {
	email, err := Field(body, "email")
	if err != nil {
		return err
	}
	name, err := Field(body, "fullName")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "   User: %s - %s\n", Display(email), Display(name))
	return err
}

func renderSavedStructure(w io.Writer, body any) error {
	name, err := Field(body, "structure", "name")
	if err != nil {
		return err
	}
	id, err := Field(body, "structure", "id")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "   Structure: %s (ID: %s)\n", Display(name), Display(id))
	return err
}

func renderStructures(w io.Writer, body any) error {
	structures, err := List(body, "structures")
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Total Structures: %d\n", len(structures)); err != nil {
		return err
	}
	for i, s := range structures {
		name, err := Field(s, "name")
		if err != nil {
			return err
		}
		nodes, err := List(s, "data", "nodes")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   [%d] %s (%d nodes)\n", i+1, Display(name), len(nodes)); err != nil {
			return err
		}
	}
	return nil
}
