package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	Primitive  int                    `json:"primitive"`
	Material   string                 `json:"material"`
	Shader     string                 `json:"shader"`
	Point      [3]float64             `json:"point"`
	Normal     [3]float64             `json:"normal"`
	UV         [2]float64             `json:"uv"`
	Distance   float64                `json:"distance"`
	FrontFace  bool                   `json:"frontFace"`
	Properties map[string]interface{} `json:"properties"`
}

func vec3(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := core.ToRGBA(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// materialProperties extracts the parameters relevant to the material's shader
func materialProperties(mat *material.Material, uv core.Vec2) map[string]interface{} {
	properties := make(map[string]interface{})

	if mat.IsEmissive() {
		properties["emission"] = vec3(mat.Emission)
		properties["color"] = hexColor(mat.Emission)
		return properties
	}

	switch mat.Shader {
	case material.Lambert:
		albedo := mat.DiffuseAt(uv)
		properties["albedo"] = vec3(albedo)
		properties["color"] = hexColor(albedo)
	case material.Phong:
		properties["diffuse"] = vec3(mat.DiffuseAt(uv))
		properties["specular"] = vec3(mat.SpecularAt(uv))
		properties["shininess"] = mat.Shininess
		properties["color"] = hexColor(mat.DiffuseAt(uv))
	case material.Mirror:
		properties["reflectivity"] = mat.Reflectivity
	case material.Glass:
		properties["ior"] = mat.IOR
		properties["absorption"] = vec3(mat.Absorption)
		properties["color"] = hexColor(mat.Absorption.Negate().Exp())
	}
	return properties
}

// inspectPixel casts a ray through the center of the given pixel and reports the first hit
func inspectPixel(sc *scene.Scene, camera *renderer.Camera, pixelX, pixelY int) InspectResponse {
	ray := camera.GetRay(float64(pixelX)+0.5, float64(pixelY)+0.5)
	ray.Direction = ray.Direction.Normalize()

	hit, ok := sc.Query().Intersect(ray, sc.Integrator.RayEpsilon, math.Inf(1))
	if !ok {
		return InspectResponse{Hit: false, Primitive: -1}
	}

	resp := InspectResponse{
		Hit:       true,
		Primitive: hit.Primitive,
		Point:     vec3(ray.At(hit.T)),
		Normal:    vec3(hit.Normal),
		UV:        [2]float64{hit.UV.X, hit.UV.Y},
		Distance:  hit.T,
		FrontFace: hit.Normal.Dot(ray.Direction) < 0,
	}
	if hit.Material != nil {
		resp.Material = hit.Material.Name
		resp.Shader = hit.Material.Shader.String()
		resp.Properties = materialProperties(hit.Material, hit.UV)
	}
	return resp
}

// handleInspect reports what the current render's camera sees through pixel (x, y)
func (s *Server) handleInspect(c echo.Context) error {
	state, err := s.currentRender()
	if err != nil {
		return err
	}

	x, errX := strconv.Atoi(c.QueryParam("x"))
	y, errY := strconv.Atoi(c.QueryParam("y"))
	if errX != nil || errY != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "x and y must be integers")
	}

	config := state.job.Camera.Config()
	if x < 0 || x >= config.Width || y < 0 || y >= config.Height {
		return echo.NewHTTPError(http.StatusBadRequest, "pixel outside the image")
	}

	return c.JSON(http.StatusOK, inspectPixel(state.job.Scene, state.job.Camera, x, y))
}
