package tasks

var team = []Assignee{
	{ID: "user-1", Name: "Ana García", Avatar: "https://i.pravatar.cc/150?img=1"},
	{ID: "user-2", Name: "Carlos López", Avatar: "https://i.pravatar.cc/150?img=2"},
	{ID: "user-3", Name: "Laura Martínez", Avatar: "https://i.pravatar.cc/150?img=3"},
	{ID: "user-4", Name: "Daniel Fernández", Avatar: "https://i.pravatar.cc/150?img=4"},
	{ID: "user-5", Name: "María Rodríguez", Avatar: "https://i.pravatar.cc/150?img=5"},
}

// SampleTeam returns the demo team members.
func SampleTeam() []Assignee {
	out := make([]Assignee, len(team))
	copy(out, team)
	return out
}

func member(id string) *Assignee {
	for _, m := range team {
		if m.ID == id {
			a := m
			return &a
		}
	}
	return nil
}

// SampleTasks returns the demo board content.
func SampleTasks() []Task {
	return []Task{
		{
			ID:          "task-1",
			Title:       "Diseñar logo de la empresa",
			Description: "Crear varias propuestas de logotipo para la revisión del cliente",
			Status:      StatusInProgress,
			Priority:    PriorityHigh,
			DueDate:     "2025-05-20",
			Assignee:    member("user-1"),
			CreatedAt:   "2025-05-12",
		},
		{
			ID:          "task-2",
			Title:       "Desarrollar página de inicio",
			Description: "Implementar diseño responsivo usando React y Tailwind CSS",
			Status:      StatusPending,
			Priority:    PriorityMedium,
			DueDate:     "2025-05-22",
			Assignee:    member("user-2"),
			CreatedAt:   "2025-05-14",
		},
		{
			ID:          "task-3",
			Title:       "Optimizar SEO del sitio web",
			Description: "Mejorar meta etiquetas y estructura para mejor posicionamiento",
			Status:      StatusReview,
			Priority:    PriorityMedium,
			DueDate:     "2025-05-18",
			Assignee:    member("user-3"),
			CreatedAt:   "2025-05-10",
		},
		{
			ID:          "task-4",
			Title:       "Preparar propuesta de cliente",
			Description: "Redactar documento con alcance, plazos y presupuesto del proyecto",
			Status:      StatusCompleted,
			Priority:    PriorityHigh,
			DueDate:     "2025-05-15",
			Assignee:    member("user-1"),
			CreatedAt:   "2025-05-08",
		},
		{
			ID:          "task-5",
			Title:       "Configurar servidor de producción",
			Description: "Instalar y configurar entorno de producción para la aplicación",
			Status:      StatusPending,
			Priority:    PriorityHigh,
			DueDate:     "2025-05-25",
			Assignee:    member("user-4"),
			CreatedAt:   "2025-05-15",
		},
	}
}
