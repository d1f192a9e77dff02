package seed

var firstNames = []string{
	"Juan", "María", "Pedro", "Ana", "Luis", "Carmen", "Carlos", "Isabel",
	"Jorge", "Patricia", "Roberto", "Laura", "Miguel", "Sofía", "Diego",
	"Valentina", "Andrés", "Camila", "Fernando", "Daniela", "Ricardo",
	"Gabriela", "Sergio", "Catalina", "Javier", "Natalia", "Rodrigo",
	"Fernanda", "Pablo", "Carolina", "Martín", "Alejandra", "Raúl",
	"Victoria", "Álvaro", "Francisca", "Tomás", "Antonia", "Matías", "Josefa",
}

var lastNames = []string{
	"González", "Rodríguez", "Fernández", "López", "Martínez", "García",
	"Pérez", "Sánchez", "Ramírez", "Torres", "Flores", "Rivera", "Gómez",
	"Díaz", "Muñoz", "Rojas", "Contreras", "Silva", "Sepúlveda", "Morales",
}
