package mockapi

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/vitalsalud/citas-core/internal/models"
)

// MemoryStore implements Store with in-process maps
type MemoryStore struct {
	mu sync.RWMutex

	nextID         map[string]uint
	users          map[uint]*models.User
	roles          map[uint]*models.Rol
	especialidades map[uint]*models.Especialidad
	doctores       map[uint]*models.Doctor
	pacientes      map[uint]*models.Paciente
	consultorios   map[uint]*models.Consultorio
	horarios       map[uint]*models.Horario
	citas          map[uint]*models.Cita
	asignaciones   map[uint]uint // doctor ID -> consultorio ID
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:         make(map[string]uint),
		users:          make(map[uint]*models.User),
		roles:          make(map[uint]*models.Rol),
		especialidades: make(map[uint]*models.Especialidad),
		doctores:       make(map[uint]*models.Doctor),
		pacientes:      make(map[uint]*models.Paciente),
		consultorios:   make(map[uint]*models.Consultorio),
		horarios:       make(map[uint]*models.Horario),
		citas:          make(map[uint]*models.Cita),
		asignaciones:   make(map[uint]uint),
	}
}

func (m *MemoryStore) id(kind string) uint {
	m.nextID[kind]++
	return m.nextID[kind]
}

// --- Users ---

func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.id("user")
	}
	if user.Rol == nil && user.RolID != 0 {
		user.Rol = m.roles[user.RolID]
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sortByID(out, func(u models.User) uint { return u.ID })
	return out, nil
}

func (m *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	if user.Rol == nil && user.RolID != 0 {
		user.Rol = m.roles[user.RolID]
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MemoryStore) DeleteUser(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// --- Roles ---

func (m *MemoryStore) CreateRol(ctx context.Context, rol *models.Rol) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rol.ID == 0 {
		rol.ID = m.id("rol")
	}
	copied := *rol
	m.roles[rol.ID] = &copied
	return nil
}

func (m *MemoryStore) RolByID(ctx context.Context, id uint) (*models.Rol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.roles[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *MemoryStore) ListRoles(ctx context.Context) ([]models.Rol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Rol, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, *r)
	}
	sortByID(out, func(r models.Rol) uint { return r.ID })
	return out, nil
}

func (m *MemoryStore) UpdateRol(ctx context.Context, rol *models.Rol) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[rol.ID]; !ok {
		return ErrNotFound
	}
	copied := *rol
	m.roles[rol.ID] = &copied
	return nil
}

func (m *MemoryStore) DeleteRol(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[id]; !ok {
		return ErrNotFound
	}
	delete(m.roles, id)
	return nil
}

// --- Especialidades ---

func (m *MemoryStore) CreateEspecialidad(ctx context.Context, e *models.Especialidad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == 0 {
		e.ID = m.id("especialidad")
	}
	copied := *e
	m.especialidades[e.ID] = &copied
	return nil
}

func (m *MemoryStore) EspecialidadByID(ctx context.Context, id uint) (*models.Especialidad, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.especialidades[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *MemoryStore) ListEspecialidades(ctx context.Context) ([]models.Especialidad, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Especialidad, 0, len(m.especialidades))
	for _, e := range m.especialidades {
		out = append(out, *e)
	}
	sortByID(out, func(e models.Especialidad) uint { return e.ID })
	return out, nil
}

func (m *MemoryStore) UpdateEspecialidad(ctx context.Context, e *models.Especialidad) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.especialidades[e.ID]; !ok {
		return ErrNotFound
	}
	copied := *e
	m.especialidades[e.ID] = &copied
	return nil
}

func (m *MemoryStore) DeleteEspecialidad(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.especialidades[id]; !ok {
		return ErrNotFound
	}
	delete(m.especialidades, id)
	return nil
}

// --- Doctores ---

func (m *MemoryStore) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == 0 {
		d.ID = m.id("doctor")
	}
	if d.Especialidad == nil && d.EspecialidadID != 0 {
		d.Especialidad = m.especialidades[d.EspecialidadID]
	}
	copied := *d
	m.doctores[d.ID] = &copied
	return nil
}

func (m *MemoryStore) DoctorByID(ctx context.Context, id uint) (*models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.doctores[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *MemoryStore) DoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.doctores {
		if strings.EqualFold(d.Email, email) {
			copied := *d
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListDoctores(ctx context.Context) ([]models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Doctor, 0, len(m.doctores))
	for _, d := range m.doctores {
		out = append(out, *d)
	}
	sortByID(out, func(d models.Doctor) uint { return d.ID })
	return out, nil
}

func (m *MemoryStore) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctores[d.ID]; !ok {
		return ErrNotFound
	}
	copied := *d
	m.doctores[d.ID] = &copied
	return nil
}

func (m *MemoryStore) DeleteDoctor(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctores[id]; !ok {
		return ErrNotFound
	}
	delete(m.doctores, id)
	return nil
}

// --- Pacientes ---

func (m *MemoryStore) CreatePaciente(ctx context.Context, p *models.Paciente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.id("paciente")
	}
	copied := *p
	m.pacientes[p.ID] = &copied
	return nil
}

func (m *MemoryStore) PacienteByID(ctx context.Context, id uint) (*models.Paciente, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pacientes[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *MemoryStore) PacienteByEmail(ctx context.Context, email string) (*models.Paciente, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.pacientes {
		if strings.EqualFold(p.Email, email) {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListPacientes(ctx context.Context) ([]models.Paciente, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Paciente, 0, len(m.pacientes))
	for _, p := range m.pacientes {
		out = append(out, *p)
	}
	sortByID(out, func(p models.Paciente) uint { return p.ID })
	return out, nil
}

func (m *MemoryStore) UpdatePaciente(ctx context.Context, p *models.Paciente) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pacientes[p.ID]; !ok {
		return ErrNotFound
	}
	copied := *p
	m.pacientes[p.ID] = &copied
	return nil
}

func (m *MemoryStore) DeletePaciente(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pacientes[id]; !ok {
		return ErrNotFound
	}
	delete(m.pacientes, id)
	return nil
}

// --- Consultorios ---

func (m *MemoryStore) CreateConsultorio(ctx context.Context, c *models.Consultorio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.id("consultorio")
	}
	copied := *c
	m.consultorios[c.ID] = &copied
	return nil
}

func (m *MemoryStore) ConsultorioByID(ctx context.Context, id uint) (*models.Consultorio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.consultorios[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MemoryStore) ListConsultorios(ctx context.Context) ([]models.Consultorio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Consultorio, 0, len(m.consultorios))
	for _, c := range m.consultorios {
		out = append(out, *c)
	}
	sortByID(out, func(c models.Consultorio) uint { return c.ID })
	return out, nil
}

func (m *MemoryStore) UpdateConsultorio(ctx context.Context, c *models.Consultorio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.consultorios[c.ID]; !ok {
		return ErrNotFound
	}
	copied := *c
	m.consultorios[c.ID] = &copied
	return nil
}

func (m *MemoryStore) DeleteConsultorio(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.consultorios[id]; !ok {
		return ErrNotFound
	}
	delete(m.consultorios, id)
	return nil
}

func (m *MemoryStore) AsignarConsultorio(ctx context.Context, doctorID, consultorioID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.asignaciones[doctorID] = consultorioID
	return nil
}

func (m *MemoryStore) ConsultorioDeDoctor(ctx context.Context, doctorID uint) (*models.Consultorio, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	consultorioID, ok := m.asignaciones[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	c, ok := m.consultorios[consultorioID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

// --- Horarios ---

func (m *MemoryStore) CreateHorario(ctx context.Context, h *models.Horario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.ID == 0 {
		h.ID = m.id("horario")
	}
	copied := *h
	m.horarios[h.ID] = &copied
	return nil
}

func (m *MemoryStore) HorarioByID(ctx context.Context, id uint) (*models.Horario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.horarios[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *h
	return &copied, nil
}

func (m *MemoryStore) HorariosByDoctor(ctx context.Context, doctorID uint) ([]models.Horario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Horario
	for _, h := range m.horarios {
		if h.DoctorID == doctorID {
			out = append(out, *h)
		}
	}
	sortByID(out, func(h models.Horario) uint { return h.ID })
	return out, nil
}

func (m *MemoryStore) UpdateHorario(ctx context.Context, h *models.Horario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.horarios[h.ID]; !ok {
		return ErrNotFound
	}
	copied := *h
	m.horarios[h.ID] = &copied
	return nil
}

func (m *MemoryStore) DeleteHorario(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.horarios[id]; !ok {
		return ErrNotFound
	}
	delete(m.horarios, id)
	return nil
}

// --- Citas ---

func (m *MemoryStore) CreateCita(ctx context.Context, c *models.Cita) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.id("cita")
	}
	m.denormalizeCita(c)
	copied := *c
	m.citas[c.ID] = &copied
	return nil
}

// denormalizeCita attaches the related records; callers hold the lock
func (m *MemoryStore) denormalizeCita(c *models.Cita) {
	if c.Paciente == nil {
		c.Paciente = m.pacientes[c.PacienteID]
	}
	if c.Doctor == nil {
		c.Doctor = m.doctores[c.DoctorID]
	}
	if c.Consultorio == nil {
		c.Consultorio = m.consultorios[c.ConsultorioID]
	}
}

func (m *MemoryStore) CitaByID(ctx context.Context, id uint) (*models.Cita, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.citas[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MemoryStore) ListCitas(ctx context.Context) ([]models.Cita, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Cita, 0, len(m.citas))
	for _, c := range m.citas {
		out = append(out, *c)
	}
	sortByID(out, func(c models.Cita) uint { return c.ID })
	return out, nil
}

func (m *MemoryStore) CitasByPaciente(ctx context.Context, pacienteID uint) ([]models.Cita, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Cita
	for _, c := range m.citas {
		if c.PacienteID == pacienteID {
			out = append(out, *c)
		}
	}
	sortByID(out, func(c models.Cita) uint { return c.ID })
	return out, nil
}

func (m *MemoryStore) CitasByDoctor(ctx context.Context, doctorID uint, estados ...string) ([]models.Cita, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Cita
	for _, c := range m.citas {
		if c.DoctorID != doctorID {
			continue
		}
		if len(estados) > 0 && !containsString(estados, c.Estado) {
			continue
		}
		out = append(out, *c)
	}
	sortByID(out, func(c models.Cita) uint { return c.ID })
	return out, nil
}

func (m *MemoryStore) UpdateCita(ctx context.Context, c *models.Cita) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.citas[c.ID]; !ok {
		return ErrNotFound
	}
	m.denormalizeCita(c)
	copied := *c
	m.citas[c.ID] = &copied
	return nil
}

func (m *MemoryStore) DeleteCita(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.citas[id]; !ok {
		return ErrNotFound
	}
	delete(m.citas, id)
	return nil
}

func (m *MemoryStore) CitaConflict(ctx context.Context, doctorID uint, fechaHora string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.citas {
		if c.DoctorID == doctorID && c.FechaHora == fechaHora && c.Estado != models.CitaRechazada {
			return true, nil
		}
	}
	return false, nil
}

func sortByID[T any](items []T, id func(T) uint) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
